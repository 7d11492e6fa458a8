package dto

type DriverInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Builtin bool
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	ProbeOK         bool
	Error           string
}
