package utils

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree > maxIndex && maxIndex > 0 {
		ParallelDegree = maxIndex
	}
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) (kMax int) {
	kMin, kMax := pm.GetBucketRange(bucketNum)
	kMax = kMax - kMin
	return
}

// Split1D distributes the remainder among the first buckets so that bucket
// sizes differ by at most one.
func (pm *PartitionMap) Split1D(bucketNum int) (bucket [2]int) {
	var (
		baseSize  = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
	)
	if bucketNum < remainder {
		bucket[0] = bucketNum * (baseSize + 1)
		bucket[1] = bucket[0] + baseSize + 1
	} else {
		bucket[0] = remainder*(baseSize+1) + (bucketNum-remainder)*baseSize
		bucket[1] = bucket[0] + baseSize
	}
	return
}
