package ftl

// DeviceController is the contract the physical device model (packages →
// dies → planes → blocks → pages) exposes to the FTL. It is an external
// collaborator referenced only by this contract (§1): the FTL never reaches
// into the device's internals, never tracks erases-remaining or page state
// itself, and never depends on its timing model.
type DeviceController interface {
	// Issue executes event (READ/WRITE/ERASE against a physical address
	// already set on the event) and returns an error if the device model
	// rejects it (e.g. a write to an already-valid page, a read of an
	// empty page, or an exhausted block erase budget).
	Issue(event *Event) error
}
