package engine

import (
	"sort"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// RankContainers returns the types ordered standard before special equipment,
// then by descending interior volume. Equal types keep their input order.
func RankContainers(types []model.ContainerType) []model.ContainerType {
	ranked := make([]model.ContainerType, len(types))
	copy(ranked, types)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].IsSpecial(), ranked[j].IsSpecial()
		if si != sj {
			return !si
		}
		return ranked[i].Volume() > ranked[j].Volume()
	})
	return ranked
}
