package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/adcsa/ged/internal/documents"
	"github.com/adcsa/ged/internal/guard"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
	"k8s.io/apimachinery/pkg/util/duration"
)

var dashboardCommand = &cli.Command{
	Name:    "dashboard",
	Aliases: []string{"documents"},
	Usage:   "Show the document dashboard",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagQuery,
			Aliases: []string{"q"},
			Usage:   "Only list documents whose name or author contains this text",
		},
		&cli.StringFlag{
			Name:    flagCategory,
			Aliases: []string{"c"},
			Usage:   "Only list documents of this category",
			Value:   documents.AllCategories,
		},
		cliFlagOutput,
		cliFlagServer,
	},
	Action: guarded(guard.Auth, dashboard),
}

// dashboardOutput is what dashboard reports in structured formats.
type dashboardOutput struct {
	Stats     []documents.Stat     `json:"stats"`
	Documents []documents.Document `json:"documents"`
}

func dashboard(c *cli.Context, apiSession *apiSession) error {
	output := strings.ToLower(c.String(flagOutput))
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	catalog := documents.NewMockCatalog()
	stats, err := catalog.Stats(apiSession.ctx)
	if err != nil {
		return err
	}
	docs, err := catalog.List(
		apiSession.ctx,
		documents.Filter{
			Query:    c.String(flagQuery),
			Category: c.String(flagCategory),
		},
	)
	if err != nil {
		return err
	}

	if output != outputTable {
		return printStructured(
			output,
			dashboardOutput{
				Stats:     stats,
				Documents: docs,
			},
		)
	}

	statsTable := uitable.New()
	for _, stat := range stats {
		statsTable.AddRow(stat.Label, stat.Value)
	}
	fmt.Println(statsTable)
	fmt.Println()

	if len(docs) == 0 {
		fmt.Println("Aucun document ne correspond à votre recherche.")
		return nil
	}
	table := uitable.New()
	table.AddRow("DOCUMENT", "CATÉGORIE", "TAILLE", "AUTEUR", "STATUT", "ÂGE")
	for _, doc := range docs {
		table.AddRow(
			doc.Name,
			doc.Category,
			doc.Size,
			doc.Author,
			doc.Status,
			duration.ShortHumanDuration(time.Since(doc.Modified)),
		)
	}
	fmt.Println(table)
	return nil
}
