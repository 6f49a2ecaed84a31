package settings

// SettingInfo is the printable form of a definition.
type SettingInfo struct {
	ID             string   `json:"id"                       toml:"id"`
	Type           string   `json:"type"                     toml:"type"`
	Scope          string   `json:"scope"                    toml:"scope"`
	Default        any      `json:"default"                  toml:"default"`
	Choices        []string `json:"choices,omitempty"        toml:"choices,omitempty"`
	Min            *float64 `json:"min,omitempty"            toml:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"            toml:"max,omitempty"`
	Step           *float64 `json:"step,omitempty"           toml:"step,omitempty"`
	RequiresReload bool     `json:"requiresReload,omitempty" toml:"requiresReload,omitempty"`
	Name           string   `json:"name"                     toml:"name"`
	Hint           string   `json:"hint"                     toml:"hint"`
}

// NamespaceInfo is the printable form of a namespace.
type NamespaceInfo struct {
	Namespace  string        `json:"namespace"  toml:"namespace"`
	Restricted bool          `json:"restricted" toml:"restricted"`
	Settings   []SettingInfo `json:"settings"   toml:"settings"`
}

// SchemaInfo is the printable form of a schema.
type SchemaInfo struct {
	Module     string          `json:"module"     toml:"module"`
	Namespaces []NamespaceInfo `json:"namespaces" toml:"namespaces"`
}

// Describe flattens the schema for printing. Labels and hints are localized
// through l.
func Describe(schema *Schema, l Localizer) SchemaInfo {
	info := SchemaInfo{Module: schema.Module()}

	for _, ns := range schema.Namespaces() {
		defs, _ := schema.Definitions(ns)

		nsInfo := NamespaceInfo{Namespace: string(ns)}
		if b, ok := schema.Binding(ns); ok {
			nsInfo.Restricted = b.Restricted
		}

		for _, d := range defs {
			s := SettingInfo{
				ID:             d.ID,
				Type:           string(d.Type),
				Scope:          string(d.EffectiveScope()),
				Default:        d.DefaultValue(),
				RequiresReload: d.RequiresReload,
				Name:           l.Localize(schema.NameKey(d)),
				Hint:           l.Localize(schema.HintKey(d)),
			}

			for _, c := range d.Choices {
				s.Choices = append(s.Choices, c.Value)
			}

			if d.Range != nil {
				s.Min, s.Max, s.Step = d.Range.Min, d.Range.Max, d.Range.Step
			}

			nsInfo.Settings = append(nsInfo.Settings, s)
		}

		info.Namespaces = append(info.Namespaces, nsInfo)
	}

	return info
}
