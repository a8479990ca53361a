package tui

import (
	"github.com/kingrea/skillgap/internal/logbook"
	"github.com/kingrea/skillgap/internal/session"
)

// Journal returns a session observer that writes every activity to lb.
// Ignored gestures are recorded as warnings.
func Journal(lb *logbook.Logbook) session.Observer {
	return func(a session.Activity) {
		role := a.Role.String()
		switch a.Kind {
		case session.ActivityRole:
			lb.Info("role selected: %s", role)
		case session.ActivityAttach:
			lb.Info("cv attached: %s (role %s)", a.File, role)
		case session.ActivityStart:
			lb.Info("analysis started for %s using %s", role, a.File)
		case session.ActivityStep:
			lb.Info("step: %s", a.Detail)
		case session.ActivityComplete:
			lb.Info("analysis complete: %s dashboard ready", a.Detail)
		case session.ActivityIgnored:
			lb.Warn("ignored: %s (role %s)", a.Reason, role)
		default:
			lb.Info("%s: %s", a.Kind, a.Detail)
		}
	}
}
