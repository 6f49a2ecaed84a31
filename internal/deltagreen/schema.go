// Package deltagreen declares the settings of the Delta Green game system.
package deltagreen

import (
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

const (
	// Module scopes every storage key of the game system.
	Module = "deltagreen"
	// LabelPrefix is the root of all setting label keys.
	LabelPrefix = "DG.Settings"
	// MenuPrefix is the root of all menu label keys.
	MenuPrefix = "DG.SettingsMenu"
)

// Namespaces of the game system, in menu order.
const (
	Automation settings.Namespace = "automation"
	Handler    settings.Namespace = "handler"
	Display    settings.Namespace = "display"
)

// Notification keys shown after a submission.
const (
	SavedKey          = LabelPrefix + ".Saved"
	PartialFailureKey = LabelPrefix + ".PartialFailure"
	ReloadRequiredKey = LabelPrefix + ".ReloadRequired"
)

const menuIcon = "fa-solid fa-dice"

// Schema returns the settings table of the game system.
func Schema() *settings.Schema {
	s := settings.NewSchema(Module, LabelPrefix)

	s.Declare(Automation,
		settings.Definition{ID: "skillFailure", Type: settings.TypeBoolean, Default: false},
	)

	s.Declare(Handler,
		settings.Definition{
			ID:             "alwaysShowHypergeometrySectionForPlayers",
			Type:           settings.TypeBoolean,
			Default:        false,
			RequiresReload: true,
		},
		settings.Definition{
			ID:             "showImpossibleLandscapesContent",
			Type:           settings.TypeBoolean,
			Default:        true,
			RequiresReload: true,
		},
		settings.Definition{
			ID:             "keepSanityPrivate",
			Type:           settings.TypeBoolean,
			Default:        false,
			RequiresReload: true,
		},
		settings.Definition{
			ID:   "skillImprovementFormula",
			Type: settings.TypeString,
			Choices: []settings.Choice{
				{Value: "1", Label: LabelPrefix + ".skillImprovementFormula.1"},
				{Value: "1d3", Label: LabelPrefix + ".skillImprovementFormula.2"},
				{Value: "1d4", Label: LabelPrefix + ".skillImprovementFormula.3"},
				{Value: "1d4-1", Label: LabelPrefix + ".skillImprovementFormula.4"},
			},
			Default: "1d4",
		},
	)

	s.Declare(Display,
		settings.Definition{
			ID:   "characterSheetStyle",
			Type: settings.TypeString,
			Choices: []settings.Choice{
				{Value: "cowboy", Label: LabelPrefix + ".charactersheet.cowboys"},
				{Value: "outlaw", Label: LabelPrefix + ".charactersheet.outlaws"},
				{Value: "program", Label: LabelPrefix + ".charactersheet.program"},
			},
			Default:        "program",
			RequiresReload: true,
		},
		settings.Definition{
			ID:             "sortSkills",
			Type:           settings.TypeBoolean,
			Default:        false,
			RequiresReload: true,
			Scope:          settings.ScopeClient,
		},
	)

	for _, ns := range []settings.Namespace{Automation, Handler, Display} {
		s.Bind(binding(ns, ns != Display))
	}

	return s
}

func binding(ns settings.Namespace, restricted bool) settings.Binding {
	prefix := MenuPrefix + "." + string(ns)

	return settings.Binding{
		Namespace:  ns,
		Name:       prefix + ".name",
		Label:      prefix + ".label",
		Hint:       prefix + ".hint",
		Icon:       menuIcon,
		Restricted: restricted,
	}
}
