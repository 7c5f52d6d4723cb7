// Package catalog lists and initializes the service and advisor catalog
package catalog

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"fjacquet/commission-calc/cmd/root"
	"fjacquet/commission-calc/internal/catalog"
	"fjacquet/commission-calc/internal/classifier"
	"fjacquet/commission-calc/internal/models"

	"github.com/spf13/cobra"
)

var force bool

// Cmd represents the catalog command
var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or initialize the service and advisor catalog",
	Long: `Inspect or initialize the catalog that supplies service commission
percentages and advisor levels.

Examples:
  commission-calc catalog services
  commission-calc catalog advisors
  commission-calc catalog init --catalog config/catalog.yaml`,
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List catalog services",
	Run: func(cmd *cobra.Command, args []string) {
		c := root.GetContainer()
		if c == nil {
			root.Log.Fatalf("Container not initialized")
			return
		}
		if err := WriteServices(cmd.OutOrStdout(), c.GetCatalog()); err != nil {
			root.Log.Fatalf("Error listing services: %v", err)
		}
	},
}

var advisorsCmd = &cobra.Command{
	Use:   "advisors",
	Short: "List catalog advisors",
	Run: func(cmd *cobra.Command, args []string) {
		c := root.GetContainer()
		if c == nil {
			root.Log.Fatalf("Container not initialized")
			return
		}
		if err := WriteAdvisors(cmd.OutOrStdout(), c.GetCatalog()); err != nil {
			root.Log.Fatalf("Error listing advisors: %v", err)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter catalog",
	Long: `Write a starter catalog with one entry per service class and a sample
advisor. An existing catalog is kept unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := root.GetContainer()
		if c == nil {
			root.Log.Fatalf("Container not initialized")
			return
		}
		if err := Init(c.GetStore(), force); err != nil {
			root.Log.Fatalf("Error initializing catalog: %v", err)
			return
		}
		root.Log.Info("Catalog initialized")
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing catalog")
	Cmd.AddCommand(servicesCmd, advisorsCmd, initCmd)
}

// WriteServices prints the services as an aligned table.
func WriteServices(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCLASS\tCOMMISSION %")
	for _, s := range c.Services() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Title, s.Class(), s.CommissionPercentage)
	}
	return tw.Flush()
}

// WriteAdvisors prints the advisors as an aligned table.
func WriteAdvisors(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tLEVEL %")
	for _, a := range c.Advisors() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Metadata.AdviserLevelTitle, a.Metadata.AdviserLevelPercentage)
	}
	return tw.Flush()
}

// Starter returns the catalog written by init.
func Starter() *catalog.Catalog {
	return catalog.New(
		[]catalog.Service{
			{ID: 1, Title: "Consulting", CommissionPercentage: models.AmountFromInt(30)},
			{ID: classifier.ServiceIDRemodeling, Title: "Remodeling", CommissionPercentage: models.AmountFromInt(10)},
			{ID: classifier.ServiceIDAccounting, Title: "Accounting", CommissionPercentage: models.AmountFromInt(20)},
			{ID: classifier.ServiceIDLegal, Title: "Legal", CommissionPercentage: models.AmountFromInt(20)},
			{ID: classifier.ServiceIDCleaning, Title: "Cleaning", CommissionPercentage: models.AmountFromInt(10)},
			{ID: classifier.ServiceIDRental, Title: "Rental"},
			{ID: classifier.ServiceIDSale, Title: "Sale"},
			{ID: classifier.ServiceIDTechnical, Title: "Technical services", CommissionPercentage: models.AmountFromInt(15)},
			{ID: classifier.ServiceIDBusinessTransfer, Title: "Business transfer"},
			{ID: classifier.ServiceIDDailyStay, Title: "Daily stay"},
		},
		[]catalog.Advisor{
			{ID: 1, Name: "Sample Advisor", Metadata: catalog.AdvisorMetadata{
				AdviserLevelTitle:      "Junior",
				AdviserLevelPercentage: models.AmountFromInt(30),
			}},
		},
	)
}

// Init saves the starter catalog through store. It fails when the catalog
// file already exists and force is false.
func Init(store *catalog.Store, force bool) error {
	if !force {
		if path, err := catalog.FindCatalogFile(store.File); err == nil {
			return fmt.Errorf("catalog %s already exists, use --force to overwrite", path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	return store.Save(Starter())
}
