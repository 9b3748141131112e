// FilePath: internal/views/views.audio.go
package views

import (
	"fmt"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
)

// AudioCard is one clickable recording in the audio list.
type AudioCard struct {
	ID       string
	Filename string
	Subtitle string
	Href     string
	Selected bool
}

// AudioListView is the audio list page. Panel is only set in inline mode when
// a recording is selected.
type AudioListView struct {
	Mode    config.AudioMode
	Status  Status
	Cards   []AudioCard
	Toolbar Toolbar
	Panel   *DetailView
}

// NewAudioListView renders the fetched recordings for mode. selected is the
// id of the inline selection, if any.
func NewAudioListView(mode config.AudioMode, records []models.AudioRecord, err error, selected string) AudioListView {
	v := AudioListView{
		Mode:    mode,
		Toolbar: ToolbarFor(models.Selection{Source: models.SourceAudio}, "/audio"),
	}
	if err != nil {
		v.Status = ErrorStatus("Error loading audio: " + listReason(err))
		return v
	}
	if len(records) == 0 {
		v.Status = Info(MsgNoAudio)
		return v
	}
	for _, rec := range records {
		id := rec.ID.String()
		card := AudioCard{
			ID:       id,
			Filename: rec.Filename,
			Subtitle: fmt.Sprintf("%s at %s", rec.Date, rec.StartTime),
			Selected: id == selected && selected != "",
		}
		if mode == config.AudioModeInline {
			card.Href = InlineURL(id)
		} else {
			card.Href = DetailURL(id, rec.Filename)
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

// FilenameOf returns the filename of the card with id, or "".
func (v AudioListView) FilenameOf(id string) string {
	for _, c := range v.Cards {
		if c.ID == id {
			return c.Filename
		}
	}
	return ""
}

func listReason(err error) string {
	if ce, ok := errors.As(err); ok && ce.Type == errors.ErrorTypeBackend && ce.Message == "" {
		return fmt.Sprintf("Status: %d", ce.Code)
	}
	return reason(err)
}
