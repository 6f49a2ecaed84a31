package settings

import (
	"strings"

	engine "github.com/deltagreen-vtt/dgsettings/internal/settings"
)

// Notice is the user facing summary of one submission.
type Notice struct {
	Message string
	Reload  string
}

func (s *Service) notice(r engine.Result) Notice {
	l := s.deps.Localizer
	msgs := s.deps.Messages

	var n Notice

	if r.OK() {
		n.Message = l.Localize(msgs.Saved)
	} else {
		n.Message = l.Localize(msgs.PartialFailure) + ": " + strings.Join(r.FailedIDs(), ", ")
	}

	if r.RequiresReload() {
		n.Reload = l.Localize(msgs.ReloadRequired)
	}

	return n
}
