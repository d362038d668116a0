package complaint

import "time"

// SeedComplaints returns the demo complaints used when no real data exists
// yet. Owner ids line up with user.SeedStudents.
func SeedComplaints() []Complaint {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []Complaint{
		{
			Title:       "Broken Air Conditioning",
			Description: "The AC unit in my room has stopped working completely. It's been 3 days and the room is getting very hot.",
			Category:    "Maintenance",
			Priority:    PriorityHigh,
			Status:      StatusPending,
			StudentID:   "stu001",
			StudentName: "John Smith",
			Room:        "Room 201",
			Block:       "Block A",
			SubmittedAt: date("2024-01-15"),
			UpdatedAt:   date("2024-01-15"),
		},
		{
			Title:       "Noise Complaint - Late Night Music",
			Description: "Students in the adjacent room are playing loud music till 2 AM daily. This is affecting my studies and sleep.",
			Category:    "Noise",
			Priority:    PriorityMedium,
			Status:      StatusInProgress,
			StudentID:   "stu002",
			StudentName: "Sarah Johnson",
			Room:        "Room 305",
			Block:       "Block B",
			SubmittedAt: date("2024-01-14"),
			UpdatedAt:   date("2024-01-16"),
		},
		{
			Title:       "Bathroom Cleaning Issue",
			Description: "The shared bathroom on floor 2 hasn't been cleaned properly for a week. There's mold growing.",
			Category:    "Cleanliness",
			Priority:    PriorityHigh,
			Status:      StatusResolved,
			StudentID:   "stu003",
			StudentName: "Mike Chen",
			Room:        "Room 102",
			Block:       "Block A",
			SubmittedAt: date("2024-01-10"),
			UpdatedAt:   date("2024-01-17"),
		},
		{
			Title:       "Wi-Fi Connection Problems",
			Description: "Internet connection is very slow and keeps disconnecting. Can't attend online classes properly.",
			Category:    "Technical",
			Priority:    PriorityMedium,
			Status:      StatusPending,
			StudentID:   "stu004",
			StudentName: "Emily Davis",
			Room:        "Room 403",
			Block:       "Block C",
			SubmittedAt: date("2024-01-16"),
			UpdatedAt:   date("2024-01-16"),
		},
		{
			Title:       "Leaking Faucet in Kitchen",
			Description: "The kitchen faucet has been leaking for 2 weeks. Water is being wasted and floor is always wet.",
			Category:    "Maintenance",
			Priority:    PriorityLow,
			Status:      StatusInProgress,
			StudentID:   "stu005",
			StudentName: "David Wilson",
			Room:        "Room 205",
			Block:       "Block A",
			SubmittedAt: date("2024-01-12"),
			UpdatedAt:   date("2024-01-16"),
		},
	}
}
