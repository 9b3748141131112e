// FilePath: internal/views/views.detail.go
package views

import (
	"fmt"
	"net/url"

	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/errors"
	"github.com/envmon/console/internal/models"
)

// Table is a titled table with fixed headers.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Correlation is the rendered environmental data of one recording. Exactly one
// of Status or the tables is shown.
type Correlation struct {
	Status  Status
	Sensor  *Table
	Weather *Table
}

var (
	sensorHeaders  = []string{"Date", "Time", "Moisture"}
	weatherHeaders = []string{"Date", "Time", "Daily Rain", "In Hum", "In Temp", "Out Hum", "Out Temp", "Rain Rate", "Wind Dir", "Wind Speed"}
)

// RenderCorrelation builds the correlation tables for bundle. An empty bundle
// yields only the "no correlated data" message.
func RenderCorrelation(bundle *models.EnvironmentalBundle) Correlation {
	if bundle.Empty() {
		return Correlation{Status: Info(MsgNoCorrelation)}
	}

	var c Correlation
	if len(bundle.SensorData) > 0 {
		c.Sensor = &Table{Title: "Correlated Sensor Data", Headers: sensorHeaders}
		for _, s := range bundle.SensorData {
			date, clock := models.SplitTimestamp(s.Timestamp)
			c.Sensor.Rows = append(c.Sensor.Rows, []string{date, clock, withUnit(s.Moisture.Or(NotAvailable), "%", s.Moisture.IsNull())})
		}
	}
	if len(bundle.WeatherData) > 0 {
		c.Weather = &Table{Title: "Correlated Weather Data", Headers: weatherHeaders}
		for _, w := range bundle.WeatherData {
			date, clock := models.SplitTimestamp(w.Timestamp)
			c.Weather.Rows = append(c.Weather.Rows, []string{
				date,
				clock,
				numeric(w.DailyRain, " mm"),
				numeric(w.InHumidity, "%"),
				numeric(w.InTemperature, "°C"),
				numeric(w.OutHumidity, "%"),
				numeric(w.OutTemperature, "°C"),
				numeric(w.RainRate, " mm/h"),
				textOr(w.WindDirection, NotAvailable),
				numeric(w.WindSpeed, " m/s"),
			})
		}
	}
	return c
}

func numeric(v models.Value, unit string) string {
	return textOr(v, "0") + unit
}

func textOr(v models.Value, fallback string) string {
	if v.IsEmpty() {
		return fallback
	}
	return v.String()
}

func withUnit(text, unit string, missing bool) string {
	if missing {
		return text
	}
	return text + unit
}

// CorrelationError replaces the panel content after a failed fetch.
func CorrelationError(err error) Correlation {
	if ce, ok := errors.As(err); ok && ce.Type == errors.ErrorTypeBackend {
		return Correlation{Status: ErrorStatus(fmt.Sprintf("Error: Status: %d", ce.Code))}
	}
	return Correlation{Status: ErrorStatus("Error: " + reason(err))}
}

// DetailView is the correlation view of one recording in either mode.
type DetailView struct {
	Mode    config.AudioMode
	AudioID string
	Title   string
	Panel   Correlation
}

// NewDetailView renders the outcome of fetching the bundle of audioID.
// An empty audioID means nothing was selected and no fetch happened.
func NewDetailView(mode config.AudioMode, audioID, name string, bundle *models.EnvironmentalBundle, err error) DetailView {
	v := DetailView{Mode: mode, AudioID: audioID, Title: name}
	if v.Title == "" {
		v.Title = "Recording " + audioID
	}
	switch {
	case audioID == "":
		v.Title = ""
		v.Panel = Correlation{Status: Info(MsgNoRecording)}
	case err != nil:
		v.Panel = CorrelationError(err)
	default:
		v.Panel = RenderCorrelation(bundle)
	}
	return v
}

// DetailURL is the navigation target of an audio card in navigated mode.
func DetailURL(id, filename string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("name", filename)
	return "/audio/details?" + q.Encode()
}

// InlineURL is the target of an audio card in inline mode; the fragment
// scrolls the page to the correlation panel.
func InlineURL(id string) string {
	return "/audio?" + url.Values{"selected": {id}}.Encode() + "#correlation"
}
