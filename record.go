package medroster

import (
	"context"
	"time"
)

// NotAvailable is the sentinel written to and read from storage for a
// missing value. Inside the program a missing value is the empty string.
const NotAvailable = "N/A"

// RawRecord is the structured result of extracting one profile page.
// An empty field means the value could not be determined.
type RawRecord struct {
	ProfileURL     string `json:"profileUrl"`
	Name           string `json:"name"`
	Qualifications string `json:"qualifications"`
	Specialty      string `json:"specialty"`
	Experience     string `json:"experience"`
	Hospital       string `json:"hospital"`
	Location       string `json:"location"`

	// Designation is only populated from stored input that carries it.
	Designation string `json:"designation,omitempty"`
}

// Record is a raw record after normalization.
type Record struct {
	RawRecord

	// ExperienceYears is nil when absent.
	ExperienceYears *int `json:"experienceYears"`

	// Country is empty when absent, otherwise an entry of the
	// country vocabulary.
	Country string `json:"country"`
}

// Validate returns an error if the record cannot be keyed.
func (r *Record) Validate() error {
	if r.ProfileURL == "" {
		return Errorf(EINVALID, "record profile URL required")
	}
	return nil
}

// Value returns the string form of the field. ExperienceYears is not
// addressable this way; FieldExperience returns the free text.
func (r *Record) Value(f Field) string {
	switch f {
	case FieldProfileURL:
		return r.ProfileURL
	case FieldName:
		return r.Name
	case FieldQualifications:
		return r.Qualifications
	case FieldSpecialty:
		return r.Specialty
	case FieldExperience:
		return r.Experience
	case FieldHospital:
		return r.Hospital
	case FieldLocation:
		return r.Location
	case FieldCountry:
		return r.Country
	case FieldDesignation:
		return r.Designation
	}
	return ""
}

// SetValue sets a text field. Unknown fields are ignored.
func (r *Record) SetValue(f Field, v string) {
	switch f {
	case FieldProfileURL:
		r.ProfileURL = v
	case FieldName:
		r.Name = v
	case FieldQualifications:
		r.Qualifications = v
	case FieldSpecialty:
		r.Specialty = v
	case FieldExperience:
		r.Experience = v
	case FieldHospital:
		r.Hospital = v
	case FieldLocation:
		r.Location = v
	case FieldCountry:
		r.Country = v
	case FieldDesignation:
		r.Designation = v
	}
}

// MissingCritical reports which of hospital, location and specialty are
// missing.
func (r *Record) MissingCritical() []Field {
	var missing []Field
	for _, f := range CriticalFields {
		if r.Value(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	other := *r
	if r.ExperienceYears != nil {
		years := *r.ExperienceYears
		other.ExperienceYears = &years
	}
	return &other
}

// Field names a record field.
type Field string

// Record fields.
const (
	FieldProfileURL     Field = "profile_url"
	FieldName           Field = "name"
	FieldQualifications Field = "qualifications"
	FieldSpecialty      Field = "specialty"
	FieldExperience     Field = "experience"
	FieldHospital       Field = "hospital"
	FieldLocation       Field = "location"
	FieldCountry        Field = "country"
	FieldDesignation    Field = "designation"
)

// TextFields are the free-text fields produced by extraction, in column order.
var TextFields = []Field{
	FieldProfileURL,
	FieldName,
	FieldQualifications,
	FieldSpecialty,
	FieldExperience,
	FieldHospital,
	FieldLocation,
	FieldDesignation,
}

// CriticalFields must be present for a record to survive validation.
var CriticalFields = []Field{FieldHospital, FieldLocation, FieldSpecialty}

// ParseField returns the field with the given name.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldProfileURL, FieldName, FieldQualifications, FieldSpecialty,
		FieldExperience, FieldHospital, FieldLocation, FieldCountry, FieldDesignation:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown field %q", name)
}

// Extractor derives a raw record from a page's line sequence.
// Implementations never fail: an undeterminable field is left empty.
type Extractor interface {
	Extract(page *Page) RawRecord
}

// RecordStore loads and saves a whole dataset.
type RecordStore interface {
	Load(ctx context.Context) ([]*Record, error)
	Save(ctx context.Context, records []*Record) error
}

// RecordService persists records keyed by profile URL.
type RecordService interface {
	// UpsertRecords inserts or updates records. Records whose content is
	// unchanged are not rewritten. Returns the number of rows written.
	UpsertRecords(ctx context.Context, records []*Record) (int, error)

	// FindRecordByURL retrieves a record by profile URL.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByURL(ctx context.Context, url string) (*Record, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, url string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Country   *string `json:"country"`
	Specialty *string `json:"specialty"`

	// MissingCritical selects records lacking hospital, location or specialty.
	MissingCritical bool `json:"missingCritical"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Run records one execution of the cleaning pipeline.
type Run struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	Input     int           `json:"input"`
	Output    int           `json:"output"`
	Stages    []StageCount  `json:"stages"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}

// StageCount is the record count before and after one pipeline stage.
type StageCount struct {
	Stage  string `json:"stage"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Removed returns the number of records the stage dropped.
func (s StageCount) Removed() int {
	return s.Before - s.After
}

// RunService records pipeline runs.
type RunService interface {
	// CreateRun stores a run, assigning its ID and creation time.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns returns runs newest first. A limit of 0 returns all.
	FindRuns(ctx context.Context, limit int) ([]*Run, error)
}
