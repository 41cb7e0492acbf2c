// Package courier implements the Courier aggregate: the courier's identity,
// shift availability, active-order set, and pending delivery-request
// bookkeeping. The dispatch engine consults and mutates these sets when
// negotiating delivery assignments; the courier's own accept/reject/pickup/
// dropoff actions mutate them through the use-case layer.
package courier
