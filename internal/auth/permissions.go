package auth

const (
	// PermSettingsView allows opening the settings menu and unrestricted forms.
	PermSettingsView = "settings.view"
	// PermSettingsRestricted allows opening and submitting restricted forms.
	PermSettingsRestricted = "settings.restricted"
)
