package summary

import "fmt"

// Diagnostic records a per-entity problem discovered while consuming a
// summary. Diagnostics never abort processing; the caller decides whether to
// surface them.
type Diagnostic struct {
	File    string `yaml:"file,omitempty" json:"file,omitempty"`
	Subject string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Message string `yaml:"message" json:"message"`
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Subject, d.Message)
}

// Validate checks the entity for required fields and returns a diagnostic for
// each violation.
func (e *Entity) Validate(file string) []Diagnostic {
	var result []Diagnostic
	if e.Name == "" {
		result = append(result, Diagnostic{File: file, Message: "entity has no qualified name"})
	}
	if e.Kind == "" {
		result = append(result, Diagnostic{File: file, Subject: e.Name, Message: "entity has no kind"})
	} else if !e.Kind.IsValid() {
		result = append(result, Diagnostic{File: file, Subject: e.Name, Message: fmt.Sprintf("unknown entity kind %q", e.Kind)})
	}
	return result
}

// Validate checks the relation for required fields.
func (r *Relation) Validate(file string) []Diagnostic {
	var result []Diagnostic
	if r.From == "" || r.To == "" {
		result = append(result, Diagnostic{File: file, Subject: r.From + "->" + r.To, Message: "relation endpoint missing"})
	}
	if r.Kind == "" {
		result = append(result, Diagnostic{File: file, Subject: r.From + "->" + r.To, Message: "relation has no kind"})
	} else if !r.Kind.IsValid() {
		result = append(result, Diagnostic{File: file, Subject: r.From + "->" + r.To, Message: fmt.Sprintf("unknown relation kind %q", r.Kind)})
	}
	return result
}
