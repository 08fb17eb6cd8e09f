package types

// Config represents the application configuration
type Config struct {
	Input struct {
		LogPath string `yaml:"log_path"`
	} `yaml:"input"`

	Analysis struct {
		TopFilenames   int `yaml:"top_filenames"`   // size of the most-requested list
		TopNotFound    int `yaml:"top_not_found"`   // size of the 404 filename/extension lists
		BandwidthYear  int `yaml:"bandwidth_year"`  // year for the daily bandwidth breakdown
		BandwidthMonth int `yaml:"bandwidth_month"` // month (1-12) for the daily bandwidth breakdown
	} `yaml:"analysis"`

	Server struct {
		Addr        string `yaml:"addr"`         // stats API listen address
		MetricsAddr string `yaml:"metrics_addr"` // Prometheus listen address
	} `yaml:"server"`

	Export struct {
		DBPath string `yaml:"db_path"` // SQLite database for the export command
	} `yaml:"export"`

	Output struct {
		ReportPath string `yaml:"report_path"` // optional report destination
		Format     string `yaml:"format"`      // json, text
	} `yaml:"output"`
}
