// FilePath: internal/models/models.sensor_data.go
package models

import "strings"

// SensorReading is a soil moisture measurement correlated with a recording.
type SensorReading struct {
	Timestamp string `json:"timestamp"` // "YYYY-MM-DD HH:MM:SS"
	Moisture  Value  `json:"moisture"`
}

// WeatherReading is a weather station sample correlated with a recording.
// Every measurement is optional; defaults are applied at render time.
type WeatherReading struct {
	Timestamp      string `json:"timestamp"`
	DailyRain      Value  `json:"daily_rain"`
	InHumidity     Value  `json:"in_humidity"`
	InTemperature  Value  `json:"in_temperature"`
	OutHumidity    Value  `json:"out_humidity"`
	OutTemperature Value  `json:"out_temperature"`
	RainRate       Value  `json:"rain_rate"`
	WindDirection  Value  `json:"wind_direction"`
	WindSpeed      Value  `json:"wind_speed"`
}

// SplitTimestamp cuts a "date time" timestamp at its first space.
func SplitTimestamp(ts string) (date, clock string) {
	date, clock, _ = strings.Cut(ts, " ")
	return date, clock
}
