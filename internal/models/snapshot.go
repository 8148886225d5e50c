package models

// Snapshot is the portable export of a profile's data. Its shape matches the
// browser app's backup file so either side can import the other's exports.
type Snapshot struct {
	RoutineData DayRecords   `json:"routineData" yaml:"routineData"`
	Goals       []Goal       `json:"metas" yaml:"metas"`
	Habits      []Habit      `json:"habitos" yaml:"habitos"`
	Config      *Preferences `json:"config,omitempty" yaml:"config,omitempty"`
	Templates   []Template   `json:"cronogramaTemplates,omitempty" yaml:"cronogramaTemplates,omitempty"`
	ExportDate  string       `json:"exportDate" yaml:"exportDate"`
	Version     string       `json:"version" yaml:"version"`
}
