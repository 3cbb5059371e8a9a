package services

import "strings"

// CommentMarker flags a description-only row as an internal comment.
const CommentMarker = "***"

// RowWindow is the local context the classifier looks at: the row itself
// and the content of its immediate neighbours. A missing neighbour is the
// zero value (all cells empty), which matches how the first and last rows
// of a section behave.
type RowWindow struct {
	PrevDescription string
	NextDescription string
	NextQty         Cell
}

// ClassifyRow derives the structural role of a row from its own cells and
// the neighbour window. It is a pure function: no ordering dependency, no
// side effects. First matching rule wins.
func ClassifyRow(r Row, w RowWindow) Role {
	if strings.TrimSpace(r.Description) == "" {
		return RoleNone
	}
	if strings.TrimSpace(r.Marker) != "" {
		return RoleTitle
	}
	if strings.TrimSpace(r.Item) != "" {
		return RoleLineitem
	}
	if strings.HasPrefix(r.Description, CommentMarker) {
		return RoleComment
	}
	blankIdent := strings.TrimSpace(r.Marker) == "" && strings.TrimSpace(r.Item) == ""
	prevBlank := strings.TrimSpace(w.PrevDescription) == ""
	nextBlank := strings.TrimSpace(w.NextDescription) == ""
	if blankIdent && prevBlank && !nextBlank && w.NextQty.Valid {
		return RoleSubtitle
	}
	if blankIdent && prevBlank && nextBlank {
		return RoleSubsystem
	}
	return RoleDescription
}

// ClassifySection assigns a role to every row of the section in place.
func ClassifySection(s *Section) {
	for i := range s.Rows {
		var w RowWindow
		if i > 0 {
			w.PrevDescription = s.Rows[i-1].Description
		}
		if i < len(s.Rows)-1 {
			w.NextDescription = s.Rows[i+1].Description
			w.NextQty = s.Rows[i+1].Qty
		}
		s.Rows[i].Derived.Role = ClassifyRow(s.Rows[i], w)
	}
}
