package queue

import "queuedesk/models"

// SeedIfFirst points the cursor at the first ticket of a fresh sequence.
func SeedIfFirst(q *models.Queue, number int, attentionID string) {
	if number == 1 {
		q.CurrentAttentionNumber = 1
		q.CurrentAttentionID = attentionID
	}
}

// RaiseCurrentNumber never lets currentNumber go backwards.
func RaiseCurrentNumber(q *models.Queue, number int) {
	if number > q.CurrentNumber {
		q.CurrentNumber = number
	}
}

// AdvanceCursor moves the cursor one step. nextID is the available ticket
// holding the new cursor number, or "" when nobody holds it yet.
func AdvanceCursor(q *models.Queue, nextID string) {
	q.CurrentAttentionNumber++
	q.CurrentAttentionID = nextID
}

// RecomputeCurrent re-targets the cursor at its current number.
func RecomputeCurrent(q *models.Queue, attentionID string) {
	q.CurrentAttentionID = attentionID
}

// FillCurrentIfEmpty lets a ticket created at the cursor number become
// current when the cursor was left pointing at nobody.
func FillCurrentIfEmpty(q *models.Queue, number int, attentionID string) {
	if q.CurrentAttentionID == "" && q.CurrentAttentionNumber == number {
		q.CurrentAttentionID = attentionID
	}
}
