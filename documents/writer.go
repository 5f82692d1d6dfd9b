package documents

import (
	"gorm.io/gorm"

	"github.com/medilink-hq/medilink-api/models"
)

type gormURLWriter struct {
	db *gorm.DB
}

func NewURLWriter(db *gorm.DB) URLWriter {
	return &gormURLWriter{db: db}
}

func (w *gormURLWriter) WriteDocumentURL(appointmentID uint, column, url string) error {
	return w.db.Model(&models.Appointment{}).Where("id = ?", appointmentID).Update(column, url).Error
}
