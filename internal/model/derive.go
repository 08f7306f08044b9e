package model

type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Filter returns the tasks matching mode in snapshot order. The result never
// aliases snapshot.
func Filter(snapshot []Task, mode FilterMode) []Task {
	out := make([]Task, 0, len(snapshot))
	for _, task := range snapshot {
		if matches(task, mode) {
			out = append(out, task)
		}
	}
	return out
}

func matches(task Task, mode FilterMode) bool {
	switch mode {
	case FilterActive:
		return !task.Status
	case FilterCompleted:
		return task.Status
	default:
		return true
	}
}

func ComputeStats(snapshot []Task) Stats {
	stats := Stats{Total: len(snapshot)}
	for _, task := range snapshot {
		if task.Status {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return stats
}
