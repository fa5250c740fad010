package series

import (
	"errors"

	"timeline-app/internal/domain/content"

	"gorm.io/gorm"
)

// DeleteEventTx removes one event: source-content garbage collection first,
// then the ordering rows, then the event itself. Order matters, join rows
// must go before the entities they reference.
func DeleteEventTx(tx *gorm.DB, eventID uint) error {
	if err := content.GCForEvent(tx, eventID); err != nil {
		return err
	}
	if err := tx.Where("event_id = ?", eventID).Delete(&EventSeriesEvent{}).Error; err != nil {
		return err
	}
	return tx.Delete(&Event{}, eventID).Error
}

// SyncTagsTx replaces a series' tag links with the submitted labels:
// delete every existing link, find-or-create each submitted tag, relink,
// then garbage-collect tags the diff orphaned. An EventTag row exists iff
// at least one series references it.
func SyncTagsTx(tx *gorm.DB, seriesID uint, labels []string) error {
	var existing []EventTagEventSeries
	if err := tx.Where("event_series_id = ?", seriesID).Find(&existing).Error; err != nil {
		return err
	}

	if err := tx.Where("event_series_id = ?", seriesID).Delete(&EventTagEventSeries{}).Error; err != nil {
		return err
	}

	kept := make(map[string]bool, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		kept[label] = true

		var tag EventTag
		err := tx.Where("text = ?", label).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&EventTag{Text: label}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Create(&EventTagEventSeries{
			EventSeriesID: seriesID,
			EventTagText:  label,
		}).Error; err != nil {
			return err
		}
	}

	for _, link := range existing {
		if kept[link.EventTagText] {
			continue
		}
		if err := gcTagTx(tx, link.EventTagText); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTagsTx removes all of a series' tag links and garbage-collects any
// tag left with zero links.
func DeleteTagsTx(tx *gorm.DB, seriesID uint) error {
	var links []EventTagEventSeries
	if err := tx.Where("event_series_id = ?", seriesID).Find(&links).Error; err != nil {
		return err
	}

	if err := tx.Where("event_series_id = ?", seriesID).Delete(&EventTagEventSeries{}).Error; err != nil {
		return err
	}

	for _, link := range links {
		if err := gcTagTx(tx, link.EventTagText); err != nil {
			return err
		}
	}
	return nil
}

func gcTagTx(tx *gorm.DB, text string) error {
	var count int64
	if err := tx.Model(&EventTagEventSeries{}).
		Where("event_tag_text = ?", text).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Where("text = ?", text).Delete(&EventTag{}).Error
}
