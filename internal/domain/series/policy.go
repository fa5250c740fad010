package series

// CanView reports whether viewerID may read a series. Private series are
// visible to their creator only; a zero viewerID means anonymous.
func CanView(s EventSeries, viewerID uint) bool {
	if !s.IsPrivate {
		return true
	}
	return viewerID != 0 && viewerID == s.CreatorID
}

// CanEdit reports whether viewerID may mutate a series. Editing never
// reassigns CreatorID, whoever performs it.
func CanEdit(s EventSeries, viewerID uint) bool {
	return viewerID != 0 && viewerID == s.CreatorID
}
