package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/adcsa/ged/internal/forms"
	"github.com/adcsa/ged/internal/guard"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"
	"k8s.io/apimachinery/pkg/util/duration"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to the GED",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Log into the GED API at the specified address; defaults to " +
				"the address used last time",
		},
		&cli.StringFlag{
			Name:    flagUsername,
			Aliases: []string{"u"},
			Usage:   "Specify the username; prompted for when omitted",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage: "Specify the password for non-interactive login; prompted " +
				"for when omitted",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of the GED",
	Action: logout,
}

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show the logged in user",
	Flags: []cli.Flag{
		cliFlagOutput,
		cliFlagServer,
	},
	Action: guarded(guard.Auth, whoami),
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	if address == "" {
		config, err := getConfig()
		if err != nil {
			return errors.New(
				"no GED API address is known yet; use --server to specify one",
			)
		}
		address = config.APIAddress
	}
	credentials := authx.Credentials{
		Username: c.String(flagUsername),
		Password: c.String(flagPassword),
	}
	if credentials.Username == "" && isInteractive() {
		if err := survey.AskOne(
			&survey.Input{Message: "Nom d'utilisateur"},
			&credentials.Username,
		); err != nil {
			return err
		}
	}
	if err := promptPassword("Mot de passe", &credentials.Password); err != nil {
		return err
	}
	credentials.Username = strings.TrimSpace(credentials.Username)
	if errs := forms.Login(
		credentials.Username,
		credentials.Password,
	); !errs.Valid() {
		return formError("", errs)
	}

	apiSession, err := newAPISession(c, address)
	if err != nil {
		return err
	}
	resp, err := apiSession.holder.Login(apiSession.ctx, credentials)
	if err != nil {
		if !session.IsInvalidCredentials(err) {
			return errors.Wrap(err, forms.MsgLoginFailed)
		}
		return errors.New(forms.LoginFeedback(err).Message)
	}
	if err = apiSession.saveUser(); err != nil {
		return err
	}
	if err = saveConfig(&config{APIAddress: address}); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	name := credentials.Username
	if resp.User != nil {
		name = resp.User.DisplayName()
	}
	fmt.Printf("Vous êtes connecté en tant que %s.\n", name)
	if resp.IsFirstLogin() {
		fmt.Printf(
			"\n%s\nUtilisez `ged password first-change` pour continuer.\n",
			forms.MsgFirstPasswordNotice,
		)
	}
	return nil
}

func logout(c *cli.Context) error {
	sessionFile, err := getSessionFile()
	if err != nil {
		return err
	}
	if _, err = os.Stat(sessionFile); os.IsNotExist(err) {
		fmt.Println("Vous n'êtes pas connecté.")
		return nil
	}
	apiSession, err := getAPISession(c)
	if err != nil {
		return err
	}
	apiSession.forget()
	fmt.Println("Vous êtes déconnecté.")
	return nil
}

// whoamiOutput is what whoami reports in structured formats.
type whoamiOutput struct {
	User      *authx.User `json:"utilisateur,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func whoami(c *cli.Context, apiSession *apiSession) error {
	output := strings.ToLower(c.String(flagOutput))
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	token, err := apiSession.holder.Token(apiSession.ctx)
	if err != nil {
		return err
	}
	if token == nil {
		return refusal(guard.Auth(apiSession.holder))
	}
	expiresAt, err := session.ExpiresAt(token.AccessToken)
	if err != nil {
		return errors.Wrap(err, "error reading session credential")
	}
	user, err := apiSession.user()
	if err != nil {
		return err
	}

	if output != outputTable {
		return printStructured(
			output,
			whoamiOutput{
				User:      user,
				ExpiresAt: expiresAt,
			},
		)
	}

	table := uitable.New()
	if user != nil {
		roles := append([]string(nil), user.Roles...)
		sort.Strings(roles)
		table.AddRow("UTILISATEUR", user.Username)
		table.AddRow("NOM", user.DisplayName())
		table.AddRow("EMAIL", user.Email)
		table.AddRow("STATUT", user.Status)
		table.AddRow("RÔLES", strings.Join(roles, ", "))
	}
	table.AddRow(
		"EXPIRE DANS",
		duration.HumanDuration(time.Until(expiresAt)),
	)
	fmt.Println(table)
	return nil
}

func isInteractive() bool {
	return terminal.IsTerminal(int(os.Stdin.Fd()))
}

// promptPassword asks for a password unless value already holds one.
func promptPassword(message string, value *string) error {
	if *value != "" {
		return nil
	}
	if !isInteractive() {
		return errors.Errorf(
			"%s: a value is required when not running interactively",
			message,
		)
	}
	return survey.AskOne(&survey.Password{Message: message}, value)
}

// formError turns form problems into an error listing every field.
func formError(message string, errs forms.Errors) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	lines := []string{}
	if message != "" {
		lines = append(lines, message)
	}
	for _, field := range fields {
		if field == "" {
			lines = append(lines, errs[field])
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", field, errs[field]))
	}
	return errors.New(strings.Join(lines, "\n"))
}
