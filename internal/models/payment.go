package models

import "time"

// PaymentEvent is a normalized record of one received funds transfer,
// produced by the webhook boundary or the gateway polling API and consumed
// exactly once by the reconciler.
type PaymentEvent struct {
	// TxID is the transaction identifier assigned by the payment network,
	// expected unique per real-world transfer. Events without a TxID are
	// not actionable.
	TxID string

	// EndToEndID is the optional secondary identifier of the transfer.
	EndToEndID string

	// Amount is the transferred amount as a decimal string, e.g. "40.00".
	Amount string

	// PayerName is free text from the payment network and untrusted;
	// it frequently drops middle names or adds punctuation.
	PayerName string

	// Timestamp is when the transfer happened, per the network.
	Timestamp time.Time
}

// Charge represents a PIX charge created for one member during a billing
// cycle. It is not persisted beyond the run; its TxID is the join key a
// future PaymentEvent is expected to reference.
type Charge struct {
	TxID   string
	Status string

	// CopyPasteCode is the renderable "copia e cola" payment code.
	CopyPasteCode string

	// QRCodeBase64 is the QR code image for the charge, base64 encoded.
	QRCodeBase64 string

	// LocationID identifies the payload location at the gateway.
	LocationID int64

	// Amount is the charged amount as a decimal string.
	Amount string
}
