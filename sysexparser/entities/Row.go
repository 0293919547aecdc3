package entities

// Row is one data record of the registry CSV, addressed by header name.
type Row struct {
	ID           string
	Manufacturer string
	Group        string
	Reserved     string
	Status       string

	Line int      // line in the source file where the record starts
	Raw  []string // cells as read, kept for diagnostics
}
