package usecase

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/types"
)

//go:embed prompt/companion_system.md
var companionSystemTmpl string

var companionSystemPrompt = template.Must(template.New("companion_system").Parse(companionSystemTmpl))

// buildSystemPrompt renders the persona prompt shared by chat and planning sessions
func buildSystemPrompt(personaName string) (string, error) {
	var buf bytes.Buffer
	if err := companionSystemPrompt.Execute(&buf, map[string]any{
		"PersonaName":    personaName,
		"DayStart":       dayStart,
		"DayEnd":         dayEnd,
		"Blocks":         DailyBlocks("Alternating focus, see below"),
		"SideHustle":     types.FocusSideHustle,
		"HealthWellness": types.FocusHealthWellness,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render system prompt", goerr.V("persona_name", personaName))
	}
	return buf.String(), nil
}
