package errors

// Phases
const (
	PhaseLoad    = "load"
	PhaseAugment = "augment"
	PhaseSave    = "save"
	PhaseConfig  = "config"
)

// Error codes
const (
	ErrDocLoad      = "E001" // documentation XML could not be read
	ErrMetadataLoad = "E002" // metadata manifest could not be read
	ErrSave         = "E003" // augmented documentation could not be written
	ErrAugment      = "E004" // a record faulted while being augmented
	ErrConfig       = "E005" // configuration is invalid
)

// DocLoad reports a documentation XML load failure
func DocLoad(path string, err error) *RunError {
	return New(PhaseLoad, ErrDocLoad, "cannot load documentation XML", path, err)
}

// MetadataLoad reports a metadata manifest load failure
func MetadataLoad(path string, err error) *RunError {
	return New(PhaseLoad, ErrMetadataLoad, "cannot load metadata manifest", path, err)
}

// Save reports an output write failure
func Save(path string, err error) *RunError {
	return New(PhaseSave, ErrSave, "cannot save augmented documentation", path, err)
}

// Augment reports a per-record fault
func Augment(id string, err error) *RunError {
	return New(PhaseAugment, ErrAugment, "augmenting "+id+" failed", "", err)
}

// Config reports an invalid configuration
func Config(err error) *RunError {
	e := New(PhaseConfig, ErrConfig, "invalid configuration", "", err)
	e.Severity = Fatal
	return e
}
