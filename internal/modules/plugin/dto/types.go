package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type FormatInfo struct {
	ID          string
	Title       string
	Description string
	Extension   string
	TimeoutMS   int
}

// ExportInput carries the already-fetched records as a JSON array; the
// plugin module stays ignorant of how they were obtained.
type ExportInput struct {
	PluginName string
	FormatID   string
	EntityType string
	ItemsJSON  string
	OutputPath string
	BaseURL    string
	Env        map[string]string
}

type ExportOutput struct {
	PluginName string
	FormatID   string
	OutputPath string
	Records    int
	Warning    string
}
