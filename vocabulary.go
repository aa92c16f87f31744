package medroster

import "slices"

// Vocabulary holds the reference tables the extraction and normalization
// heuristics match against. Every list is ordered: where several entries
// could match, the earliest one wins.
type Vocabulary struct {
	// Honorifics mark a line as naming a person.
	Honorifics []string `yaml:"honorifics"`
	// NameNoise disqualifies an honorific line as a name.
	NameNoise []string `yaml:"name_noise"`

	QualificationKeywords   []string `yaml:"qualification_keywords"`
	QualificationExclusions []string `yaml:"qualification_exclusions"`
	QualificationPrefixes   []string `yaml:"qualification_prefixes"`

	// SpecialtyKeywords is the priority table for specialty detection.
	SpecialtyKeywords  []string `yaml:"specialty_keywords"`
	SpecialtyNoise     []string `yaml:"specialty_noise"`
	CredentialGuard    []string `yaml:"credential_guard"`
	ProfessionSuffixes []string `yaml:"profession_suffixes"`
	SuffixNoise        []string `yaml:"suffix_noise"`

	ExperiencePhrases []string `yaml:"experience_phrases"`

	HospitalMarkers      []string `yaml:"hospital_markers"`
	NavigationExclusions []string `yaml:"navigation_exclusions"`
	ActionVerbs          []string `yaml:"action_verbs"`
	LocationExclusions   []string `yaml:"location_exclusions"`
	LocaleSignals        []string `yaml:"locale_signals"`

	CanonicalSpecialties []string `yaml:"canonical_specialties"`
	Countries            []string `yaml:"countries"`

	// Boilerplate is removed from qualifications during normalization.
	Boilerplate string `yaml:"boilerplate"`
	// InvalidCredentialPrefix marks qualifications holding a registration
	// number rather than credentials.
	InvalidCredentialPrefix string `yaml:"invalid_credential_prefix"`
}

// Clone returns a deep copy of the vocabulary.
func (v *Vocabulary) Clone() *Vocabulary {
	return &Vocabulary{
		Honorifics:              slices.Clone(v.Honorifics),
		NameNoise:               slices.Clone(v.NameNoise),
		QualificationKeywords:   slices.Clone(v.QualificationKeywords),
		QualificationExclusions: slices.Clone(v.QualificationExclusions),
		QualificationPrefixes:   slices.Clone(v.QualificationPrefixes),
		SpecialtyKeywords:       slices.Clone(v.SpecialtyKeywords),
		SpecialtyNoise:          slices.Clone(v.SpecialtyNoise),
		CredentialGuard:         slices.Clone(v.CredentialGuard),
		ProfessionSuffixes:      slices.Clone(v.ProfessionSuffixes),
		SuffixNoise:             slices.Clone(v.SuffixNoise),
		ExperiencePhrases:       slices.Clone(v.ExperiencePhrases),
		HospitalMarkers:         slices.Clone(v.HospitalMarkers),
		NavigationExclusions:    slices.Clone(v.NavigationExclusions),
		ActionVerbs:             slices.Clone(v.ActionVerbs),
		LocationExclusions:      slices.Clone(v.LocationExclusions),
		LocaleSignals:           slices.Clone(v.LocaleSignals),
		CanonicalSpecialties:    slices.Clone(v.CanonicalSpecialties),
		Countries:               slices.Clone(v.Countries),
		Boilerplate:             v.Boilerplate,
		InvalidCredentialPrefix: v.InvalidCredentialPrefix,
	}
}

// DefaultCountries is the country allow-list used when none is configured.
var DefaultCountries = []string{"Bangladesh", "India"}

// DefaultVocabulary returns a fresh copy of the built-in tables, tuned for
// South Asian doctor directories.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Honorifics: []string{"Dr.", "Prof.", "Assoc.", "Asst."},
		NameNoise:  []string{"MBBS", "FCPS", "Experience", "Specialist"},

		QualificationKeywords: []string{
			"MBBS", "BDS", "FCPS", "MD", "MS", "FRCS", "MRCP", "MCPS", "BCS",
			"MPH", "MPhil", "PhD", "DM", "MCh", "DNB", "FRCOG", "MRCOG", "FACS",
			"DOMS", "DO", "DCH", "DGO", "DA", "Diploma", "Fellowship", "FACC",
			"FRCP", "FICS", "MNAMS",
		},
		QualificationExclusions: []string{
			"Years of Experience", "Experience Overall", "Doctor Reg", "BMDC",
			"Specialist", "Surgeon", "Consultant", "Hospital", "Medical Centre",
			"Clinic", "Get Direction", "Book Appointment", "Dhaka", "Bangladesh",
			"India",
		},
		QualificationPrefixes: []string{"Qualifications:", "Degrees:", "Education:"},

		SpecialtyKeywords: []string{
			"Rheumatologist", "Cardiologist", "Neurologist", "Dermatologist",
			"Nephrologist", "Oncologist", "Endocrinologist", "Gastroenterologist",
			"Pulmonologist", "Hematologist", "Radiologist", "Pathologist",
			"Anesthesiologist", "Ophthalmologist", "Neonatologist", "Gynecologist",
			"Urologist", "Immunologist", "Pediatrician", "Obstetrician",
			"Psychiatrist", "Dentist", "ENT", "Specialist", "Medicine Specialist",
			"Chest Specialist", "Respiratory Specialist",
			"Critical Care Medicine Specialist", "Diabetes Specialist",
			"Family Medicine Specialist", "Surgeon", "General Surgeon",
			"Neurosurgeon", "Cardiovascular Surgeon", "Thoracic Surgeon",
			"Vascular Surgeon", "Plastic Surgeon", "Colorectal Surgeon",
			"Hepatobiliary Surgeon", "Orthopedic Surgeon", "Maxillofacial Surgeon",
			"Dental Surgeon",
		},
		SpecialtyNoise: []string{
			"MBBS", "FCPS", "BCS", "MD", "MS", "Years", "Hospital", "Dhaka",
			"Bangladesh", "India", "Book", "Get", "Find", "View", "Doctor",
		},
		CredentialGuard: []string{"MBBS", "FCPS", "MD", "MS"},
		ProfessionSuffixes: []string{
			"ologist", "logist", "ist", "ian", "ician", "Specialist", "Surgeon",
			"Consultant",
		},
		SuffixNoise: []string{"MBBS", "FCPS", "Years", "Hospital"},

		ExperiencePhrases: []string{
			"Years of Experience", "Experience Overall", "Year of Experience",
		},

		HospitalMarkers: []string{
			"Hospital", "Medical Centre", "Medical Center", "Clinic",
			"Healthcare", "Medical College",
		},
		NavigationExclusions: []string{
			"Find Hospital", "Get Direction", "Book Appointment",
			"Book appointment", "Availability", "Work Experience", "Education",
			"Locations", "View all", "Info",
		},
		ActionVerbs: []string{"Book", "View", "Find", "Get"},
		LocationExclusions: []string{
			"Get Direction", "Book Appointment", "Availability", "Find Hospital",
			"Info",
		},
		LocaleSignals: []string{
			",", "Road", "Rd", "Dhaka", "Bangladesh", "India", "No.", "Street",
			"Avenue", "Chittagong", "Sylhet", "Rajshahi", "Khulna", "Barisal",
			"Mumbai", "Delhi", "Bangalore", "Kolkata", "Chennai", "Hyderabad",
			"City", "Building", "Circular",
		},

		CanonicalSpecialties: []string{
			"Aesthetic Dermatologist", "Allergy Skin-VD", "Andrologist",
			"Anesthesiologist", "Biochemist", "Cardiac Surgeon", "Cardiologist",
			"Cardiothoracic Surgeon", "Chest Specialist", "Clinical Nutritionist",
			"Colorectal Surgeon", "Cosmetic Dentist", "Cosmetologist",
			"Critical Care Specialist", "Dentist", "Dermatologist",
			"Dermatosurgeon", "Diabetes Specialist", "Diabetologist", "Dietician",
			"Endocrinologist", "Epidemiologist", "Family Medicine Specialist",
			"Gastroenterologist", "General Physician", "General Surgeon",
			"Geriatrician", "Gynecologic Oncologist", "Gynecologist",
			"Hair Transplant Surgeon", "Hematologist", "Hepatobiliary Surgeon",
			"Hepatologist", "Immunologist", "Infertility Specialist",
			"Internal Medicine", "Internal Medicine Specialist",
			"Interventional Cardiologist", "Laparoscopic Surgeon", "Laparoscopist",
			"Maxillofacial Surgeon", "Medicine Specialist", "Microbiologist",
			"Neonatologist", "Nephrologist", "Neurologist", "Neurosurgeon",
			"Nutritionist", "Obstetrician", "Oncologist", "Ophthalmologist",
			"Orthopedic Surgeon", "Orthopedist", "ENT",
			"Pain Management Specialist", "Pathologist", "Pediatric Cardiologist",
			"Pediatric Surgeon", "Pediatrician", "Physical Medicine",
			"Physiotherapist", "Plastic Surgeon", "Psychiatrist", "Psychologist",
			"Pulmonologist", "Radiologist", "Rheumatologist",
			"Sexual Medicine Specialist", "Sonologist", "Spine Surgeon",
			"Sports Physician", "Surgeon", "Thoracic Surgeon",
		},
		Countries: []string{
			"Bangladesh", "India", "Pakistan", "Sri Lanka", "Nepal",
			"United States", "USA", "Canada", "UK", "United Kingdom", "Australia",
			"Singapore", "Malaysia", "Thailand",
		},

		Boilerplate:             "Domiciliary Services, Find Doctor, ",
		InvalidCredentialPrefix: "BMDC",
	}
}
