// FilePath: internal/models/models.audio.go
package models

// AudioRecord is one uploaded recording as listed by the backend.
type AudioRecord struct {
	ID        ID     `json:"id"`
	Filename  string `json:"filename"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

// AudioUploadResult is the backend answer to an audio upload.
// Older backends answer {audio_id}, newer ones {id, status, message}.
type AudioUploadResult struct {
	Status  string `json:"status"`
	AudioID ID     `json:"audio_id"`
	ID      ID     `json:"id"`
	Message string `json:"message"`
}

// RecordingID returns whichever identifier the backend provided.
func (r AudioUploadResult) RecordingID() ID {
	if r.AudioID != "" {
		return r.AudioID
	}
	return r.ID
}
