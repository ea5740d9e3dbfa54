package domain

// Represents a field worker who fulfills reports.
// Workload is derived (open report count), never stored here.
type Collector struct {
	CollectorID string
	Name        string
	Active      bool
}
