package content

import (
	"errors"

	"gorm.io/gorm"
)

// GCForEvent removes the source-content join row for an event and, if that
// was the last event referencing the source content, deletes its comment
// and then the source content itself. A SourceContent/Comment row exists
// iff at least one event references it.
//
// Pass the transaction in; do NOT import timeline-app/database here.
func GCForEvent(tx *gorm.DB, eventID uint) error {
	var join SourceContentEvent
	err := tx.Where("event_id = ?", eventID).First(&join).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := tx.Where("source_content_id = ? AND event_id = ?", join.SourceContentID, eventID).
		Delete(&SourceContentEvent{}).Error; err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&SourceContentEvent{}).
		Where("source_content_id = ?", join.SourceContentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := tx.Where("source_content_id = ?", join.SourceContentID).
		Delete(&Comment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&SourceContent{}, join.SourceContentID).Error
}
