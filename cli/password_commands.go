package main

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/adcsa/ged/internal/forms"
	"github.com/adcsa/ged/internal/guard"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var passwordCommand = &cli.Command{
	Name:  "password",
	Usage: "Manage your password",
	Subcommands: []*cli.Command{
		{
			Name:  "first-change",
			Usage: "Replace the initial password of a new account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagCurrentPassword,
					Usage: "Specify the initial password; prompted for when omitted",
				},
				&cli.StringFlag{
					Name:  flagNewPassword,
					Usage: "Specify the new password; prompted for when omitted",
				},
				cliFlagServer,
			},
			Action: guarded(guard.Auth, passwordFirstChange),
		},
		{
			Name:  "change",
			Usage: "Change your password",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagCurrentPassword,
					Usage: "Specify the current password; prompted for when omitted",
				},
				&cli.StringFlag{
					Name:  flagNewPassword,
					Usage: "Specify the new password; prompted for when omitted",
				},
				cliFlagServer,
			},
			Action: guarded(guard.Auth, passwordChange),
		},
		{
			Name:  "reset-request",
			Usage: "Have a password reset link mailed to you",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "Specify the address of the account; prompted for when omitted",
				},
				cliFlagServer,
			},
			Action: passwordResetRequest,
		},
		{
			Name:  "reset",
			Usage: "Choose a new password using a reset code",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagToken,
					Aliases:  []string{"t"},
					Usage:    "Specify the code from the reset email (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:  flagNewPassword,
					Usage: "Specify the new password; prompted for when omitted",
				},
				cliFlagServer,
			},
			Action: passwordReset,
		},
	},
}

// newPasswordInput is a new password and its confirmation.
type newPasswordInput struct {
	password string
	confirm  string
}

// promptNewPassword asks for a new password twice. A password given on the
// command line is taken as confirmed.
func promptNewPassword(c *cli.Context) (newPasswordInput, error) {
	input := newPasswordInput{
		password: c.String(flagNewPassword),
	}
	if input.password != "" {
		input.confirm = input.password
		return input, nil
	}
	if err := promptPassword(
		"Nouveau mot de passe",
		&input.password,
	); err != nil {
		return input, err
	}
	strength := forms.PasswordStrength(input.password)
	fmt.Printf("Force du mot de passe : %s\n", strength.Label)
	if err := promptPassword(
		"Confirmer le mot de passe",
		&input.confirm,
	); err != nil {
		return input, err
	}
	return input, nil
}

func passwordFirstChange(c *cli.Context, apiSession *apiSession) error {
	change := authx.FirstPasswordChange{
		CurrentPassword: c.String(flagCurrentPassword),
	}
	if err := promptPassword(
		"Mot de passe provisoire",
		&change.CurrentPassword,
	); err != nil {
		return err
	}
	input, err := promptNewPassword(c)
	if err != nil {
		return err
	}
	change.NewPassword = input.password
	change.ConfirmPassword = input.confirm
	if errs := forms.FirstPassword(
		change.CurrentPassword,
		change.NewPassword,
		change.ConfirmPassword,
	); !errs.Valid() {
		return formError("", errs)
	}

	resp, err := apiSession.client.Passwords().FirstChange(
		apiSession.ctx,
		change,
	)
	if err != nil {
		return apiError(err)
	}
	if err = apiSession.holder.ReplaceCredential(apiSession.ctx, resp); err != nil {
		return err
	}
	user, err := apiSession.user()
	if err != nil {
		return err
	}
	if user != nil && user.IsFirstLogin {
		user.IsFirstLogin = false
		user.IsFirstLoginExpired = false
		if err = apiSession.saveUserRecord(user); err != nil {
			return err
		}
	}
	apiSession.holder.FirstPasswordChanged()
	fmt.Println(forms.MsgPasswordChanged)
	return nil
}

func passwordChange(c *cli.Context, apiSession *apiSession) error {
	change := authx.PasswordChange{
		OldPassword: c.String(flagCurrentPassword),
	}
	if err := promptPassword(
		"Mot de passe actuel",
		&change.OldPassword,
	); err != nil {
		return err
	}
	input, err := promptNewPassword(c)
	if err != nil {
		return err
	}
	change.NewPassword = input.password
	if errs := forms.FirstPassword(
		change.OldPassword,
		input.password,
		input.confirm,
	); !errs.Valid() {
		return formError("", errs)
	}
	if _, err = apiSession.client.Passwords().Change(
		apiSession.ctx,
		change,
	); err != nil {
		return apiError(err)
	}
	fmt.Println(forms.MsgPasswordChanged)
	return nil
}

func passwordResetRequest(c *cli.Context) error {
	email := c.String(flagEmail)
	if email == "" && isInteractive() {
		if err := survey.AskOne(
			&survey.Input{Message: "Adresse email"},
			&email,
		); err != nil {
			return err
		}
	}
	email = strings.TrimSpace(email)
	if errs := forms.ResetRequest(email); !errs.Valid() {
		return formError("", errs)
	}
	apiSession, err := getAPISession(c)
	if err != nil {
		return err
	}
	if _, err = apiSession.client.Passwords().RequestReset(
		apiSession.ctx,
		email,
	); err != nil {
		return apiError(err)
	}
	fmt.Printf(
		"%s\nUtilisez `ged password reset --token <code>` pour choisir un "+
			"nouveau mot de passe.\n",
		forms.MsgResetRequestSent,
	)
	return nil
}

func passwordReset(c *cli.Context) error {
	reset := authx.PasswordReset{
		Token: strings.TrimSpace(c.String(flagToken)),
	}
	input, err := promptNewPassword(c)
	if err != nil {
		return err
	}
	reset.NewPassword = input.password
	reset.ConfirmPassword = input.confirm
	if errs := forms.ResetPassword(
		reset.Token,
		input.password,
		input.confirm,
	); !errs.Valid() {
		return formError("", errs)
	}
	apiSession, err := getAPISession(c)
	if err != nil {
		return err
	}
	if _, err = apiSession.client.Passwords().Reset(
		apiSession.ctx,
		reset,
	); err != nil {
		return apiError(err)
	}
	fmt.Printf(
		"%s\nUtilisez `ged login` pour vous connecter.\n",
		forms.MsgPasswordReset,
	)
	return nil
}

// apiError explains a failed API call the way the console's forms do.
func apiError(err error) error {
	feedback := forms.APIFeedback(err)
	if feedback.Message == forms.MsgGenericFailure {
		return errors.Wrap(err, feedback.Message)
	}
	return formError(feedback.Message, feedback.Fields)
}
