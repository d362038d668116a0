package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/hosteldesk/core/complaint"
	"github.com/trezcool/hosteldesk/core/user"
)

const demoPassword = "ChangeMe123!"

// seedDemo loads the demo roster and complaints. Existing accounts are left
// untouched so the command can be re-run safely.
func (cli *commandLine) seedDemo() error {
	ctx := context.Background()

	for _, usr := range user.SeedStudents() {
		if _, err := cli.usrRepo.GetUserByEmail(ctx, usr.Email); err == nil {
			continue
		} else if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		if err := usr.SetPassword(demoPassword); err != nil {
			return err
		}
		if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
			return err
		}
		fmt.Printf("created student %s (%s)\n", usr.StudentID, usr.Email)
	}

	existing, err := cli.cplRepo.QueryAllComplaints(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("complaints already present, skipping")
		return nil
	}
	for _, cpl := range complaint.SeedComplaints() {
		if _, err := cli.cplRepo.CreateComplaint(ctx, cpl); err != nil {
			return err
		}
		fmt.Printf("created complaint %q\n", cpl.Title)
	}
	return nil
}
