package user

import "time"

// SeedStudents returns the demo roster used when no real data exists yet
// (in-memory repositories and the admin `seeddemo` command).
func SeedStudents() []User {
	now := time.Now().UTC()
	students := []User{
		{Name: "John Smith", Email: "john.smith@university.edu", Mobile: "+1-555-0101", StudentID: "stu001", Room: "Room 201", Block: "Block A"},
		{Name: "Sarah Johnson", Email: "sarah.johnson@university.edu", Mobile: "+1-555-0102", StudentID: "stu002", Room: "Room 305", Block: "Block B"},
		{Name: "Mike Chen", Email: "mike.chen@university.edu", Mobile: "+1-555-0103", StudentID: "stu003", Room: "Room 102", Block: "Block A"},
		{Name: "Emily Davis", Email: "emily.davis@university.edu", Mobile: "+1-555-0104", StudentID: "stu004", Room: "Room 403", Block: "Block C"},
		{Name: "David Wilson", Email: "david.wilson@university.edu", Mobile: "+1-555-0105", StudentID: "stu005", Room: "Room 205", Block: "Block A"},
	}
	for i := range students {
		students[i].Roles = []string{RoleStudent}
		students[i].SetActive(true)
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
	}
	return students
}
