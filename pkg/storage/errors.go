package storage

import "errors"

// ErrNotFound is returned when the requested order, request, or deal does not exist.
var ErrNotFound = errors.New("not found")

// ErrOrderNotOpen is returned when an operation requires an open order, e.g. a second accept racing on the same order.
var ErrOrderNotOpen = errors.New("order is no longer open")

// ErrRequestNotPending is returned when a fulfillment request has already been accepted or denied.
var ErrRequestNotPending = errors.New("fulfillment request is not pending")

// ErrDealClosed is returned when a deal has left the in_progress state and no longer accepts messages.
var ErrDealClosed = errors.New("deal is closed")

// ErrNotParticipant is returned when a confirmation names a user that is neither buyer nor seller.
var ErrNotParticipant = errors.New("user is not a party to the deal")
