package main

import (
	"github.com/spf13/cobra"

	"ecotrack/internal/app"
	"ecotrack/internal/service"
)

const (
	defaultAdminEmail    = "admin@ecotrack.com"
	defaultAdminPassword = "admin123"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	Long:  `Run the schema migration. With RESET_DB=true every table is dropped first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		a.Logger.Info().Msg("schema up to date")
		return nil
	},
}

// bootstrapAdminCmd represents the bootstrap-admin command
var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return ensureAdmin(cmd, a, email, password)
	},
}

// ingestCmd groups the feed commands
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import indicators from external feeds",
}

// ingestWeatherCmd represents the ingest weather command
var ingestWeatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Import hourly Open-Meteo temperature and wind speed for a city",
	Long: `Import the past and current day of hourly weather for one city.

Examples:
  ecotrack ingest weather
  ecotrack ingest weather --city Lyon --postal-code 69000 --lat 45.764 --lon 4.8357`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return ingestWeather(cmd, a)
	},
}

// ingestCSVCmd represents the ingest csv command
var ingestCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import the pollution CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return ingestCSV(cmd, a)
	},
}

// ingestAllCmd represents the ingest all command
var ingestAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Bootstrap the admin, then import weather and CSV data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := ensureAdmin(cmd, a, defaultAdminEmail, defaultAdminPassword); err != nil {
			return err
		}
		if err := ingestWeather(cmd, a); err != nil {
			return err
		}
		return ingestCSV(cmd, a)
	},
}

func ensureAdmin(cmd *cobra.Command, a *app.App, email, password string) error {
	user, created, err := a.Auth.EnsureAdmin(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	if created {
		a.Logger.Info().Str("email", user.Email).Msg("admin created")
	} else {
		a.Logger.Info().Str("email", user.Email).Msg("admin already exists")
	}
	return nil
}

func ingestWeather(cmd *cobra.Command, a *app.App) error {
	city, _ := cmd.Flags().GetString("city")
	postalCode, _ := cmd.Flags().GetString("postal-code")
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")

	result, err := a.Ingestion.IngestWeather(cmd.Context(), service.WeatherRequest{
		City:       city,
		PostalCode: &postalCode,
		Latitude:   lat,
		Longitude:  lon,
	})
	if err != nil {
		return err
	}
	cmd.Printf("%d weather indicators inserted\n", result.Indicators)
	return nil
}

func ingestCSV(cmd *cobra.Command, a *app.App) error {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = a.Config.CSVPath
	}
	skipInvalid, _ := cmd.Flags().GetBool("skip-invalid")

	result, err := a.Ingestion.IngestCSV(cmd.Context(), path, service.CSVOptions{SkipInvalid: skipInvalid})
	if err != nil {
		return err
	}
	cmd.Printf("%d pollution indicators inserted, %d rows skipped\n", result.Indicators, len(result.Skipped))
	return nil
}

func addWeatherFlags(cmd *cobra.Command) {
	cmd.Flags().String("city", "Paris", "Zone name")
	cmd.Flags().String("postal-code", "75000", "Zone postal code")
	cmd.Flags().Float64("lat", 48.8566, "Latitude")
	cmd.Flags().Float64("lon", 2.3522, "Longitude")
}

func addCSVFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "CSV file (defaults to CSV_PATH)")
	cmd.Flags().Bool("skip-invalid", false, "Import valid rows and report the invalid ones instead of aborting")
}

func init() {
	bootstrapAdminCmd.Flags().String("email", defaultAdminEmail, "Admin email")
	bootstrapAdminCmd.Flags().String("password", defaultAdminPassword, "Admin password")

	addWeatherFlags(ingestWeatherCmd)
	addCSVFlags(ingestCSVCmd)
	addWeatherFlags(ingestAllCmd)
	addCSVFlags(ingestAllCmd)

	ingestCmd.AddCommand(ingestWeatherCmd)
	ingestCmd.AddCommand(ingestCSVCmd)
	ingestCmd.AddCommand(ingestAllCmd)
}
