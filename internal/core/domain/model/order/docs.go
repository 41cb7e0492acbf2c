// Package order implements the Order aggregate and the Delivery entity it
// owns. An order carries priced line items and a status lifecycle from Placed
// through Delivered; its delivery tracks the courier negotiation as a series
// of single-courier requests, each answered by accept, reject, or timeout.
// All mutation of a delivery and its requests goes through the Order root.
package order
