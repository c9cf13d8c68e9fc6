// Package domain re-exports the per-area model packages under one import,
// so repos and services can refer to every persisted type through a single
// alias.
package domain

import (
	"github.com/guidedtopic/guidedtopic-backend/internal/domain/content"
	"github.com/guidedtopic/guidedtopic-backend/internal/domain/user"
)

type User = user.User

type Video = content.Video
type Question = content.Question
type AnswerSlot = content.AnswerSlot
type SlotLabel = content.SlotLabel

const (
	SlotA = content.SlotA
	SlotB = content.SlotB
	SlotC = content.SlotC
	SlotD = content.SlotD
	SlotE = content.SlotE

	DurationUnknown = content.DurationUnknown
)

var SlotLabels = content.SlotLabels
