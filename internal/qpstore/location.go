package qpstore

// Location is a mesh coordinate used to key value history. It is
// comparable and safe to use as a map key as long as Custom, when set,
// holds a comparable dynamic type; the store never inspects Custom
// itself, so callers are free to use it for whatever addressing scheme
// (per-node, per-DOF, ...) their mesh needs beyond elem/face/block/qp.
type Location struct {
	ElemID  int
	FaceID  int
	BlockID int
	QP      int
	NQP     int
	Custom  any
}
