package partition

import "errors"

var (
	// ErrEmptyPartition is returned when a partition with zero member
	// nodes is handed to a routine that needs at least one representative
	// node (for example to read off its LoopType).
	ErrEmptyPartition = errors.New("partition: partition has no nodes")
	// ErrDanglingDependency is returned by ComputePartitions if, after
	// splitting and flooding, some node's dependency is not itself a
	// member of any resulting partition. This would indicate a defect in
	// the partitioning algorithm rather than a caller error.
	ErrDanglingDependency = errors.New("partition: dependency missing from every partition")
)
