// FilePath: internal/models/models.environment.go
package models

// EnvironmentalBundle holds the readings captured during one recording.
type EnvironmentalBundle struct {
	SensorData  []SensorReading  `json:"sensor_data"`
	WeatherData []WeatherReading `json:"weather_data"`
}

// Empty reports the "no correlated data" terminal state.
func (b *EnvironmentalBundle) Empty() bool {
	return b == nil || (len(b.SensorData) == 0 && len(b.WeatherData) == 0)
}

// LegacyReading is the flat {time, moisture} row older backends returned
// instead of a bundle.
type LegacyReading struct {
	Time     string `json:"time"`
	Moisture Value  `json:"moisture"`
}

// BundleFromLegacy normalizes a legacy flat response into a bundle.
func BundleFromLegacy(rows []LegacyReading) *EnvironmentalBundle {
	bundle := &EnvironmentalBundle{}
	for _, row := range rows {
		bundle.SensorData = append(bundle.SensorData, SensorReading{
			Timestamp: row.Time,
			Moisture:  row.Moisture,
		})
	}
	return bundle
}
