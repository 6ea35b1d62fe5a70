package archive

import "github.com/shirou/gopsutil/v3/mem"

// eagerMemoryDivisor bounds an eagerly decoded archive to this fraction of
// the available memory.
const eagerMemoryDivisor = 4

var availableMemory = func() (uint64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vmStat.Available, nil
}

// FitsInMemory reports whether an archive of size bytes may be decoded
// eagerly. Unknown availability counts as enough.
func FitsInMemory(size int64) bool {
	available, err := availableMemory()
	if err != nil || available == 0 {
		return true
	}
	return size >= 0 && uint64(size) <= available/eagerMemoryDivisor
}
