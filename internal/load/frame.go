package load

import (
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

type frameKind int

const (
	// frameUnmapped marks an element that produced nothing; its descendants are skipped.
	frameUnmapped frameKind = iota
	// frameInstance holds the instance created for the element.
	frameInstance
	// frameSlot is a containment slot: nested elements fill feature of instance.
	frameSlot
)

type frame struct {
	kind     frameKind
	instance *model.Instance
	feature  *metamodel.Feature // frameSlot only
}

type stack []frame

func (s *stack) push(f frame) {
	*s = append(*s, f)
}

func (s *stack) pop() (frame, bool) {
	if len(*s) == 0 {
		return frame{}, false
	}

	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]

	return top, true
}

func (s stack) peek() (frame, bool) {
	if len(s) == 0 {
		return frame{}, false
	}

	return s[len(s)-1], true
}
