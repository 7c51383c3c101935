package debuglog

// serializer renders batches of records into the byte streams the storage
// layer appends to disk: one chronological blob and one blob per group.
type serializer struct {
	scratch []byte
}

func newSerializer() *serializer {
	return &serializer{
		scratch: make([]byte, 0, 4096),
	}
}

// renderBatch produces the chronological stream and the per-group streams
// for one flush. Records within a stream are joined by a blank line (double
// native line ending). Streams that are disabled come back empty.
func (s *serializer) renderBatch(records []*Record, writeTime string, chronological, groups bool) ([]byte, map[string][]byte) {
	var chronologicalText []byte
	var groupsText map[string][]byte

	if groups {
		groupsText = make(map[string][]byte)
	}

	for _, record := range records {
		s.scratch = record.appendText(s.scratch[:0], writeTime)

		if chronological {
			if len(chronologicalText) != 0 {
				chronologicalText = append(chronologicalText, recordSeparatorBytes...)
			}
			chronologicalText = append(chronologicalText, s.scratch...)
		}

		if groups {
			groupText := groupsText[record.Group]
			if len(groupText) != 0 {
				groupText = append(groupText, recordSeparatorBytes...)
			}
			groupsText[record.Group] = append(groupText, s.scratch...)
		}
	}

	return chronologicalText, groupsText
}
