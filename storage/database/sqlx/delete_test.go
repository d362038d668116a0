package sqlxrepos

import (
	"context"
	"testing"
)

// a nil DB handle proves that no query reaches the database
func TestDeleteByID_skipsMalformedIDs(t *testing.T) {
	ctx := context.Background()
	badIDs := []string{"", "garbage", "123", "2f1f56a6-67c9-4075-b281"}

	t.Run("users", func(t *testing.T) {
		repo := NewUserRepository(nil)
		if err := repo.DeleteUsersByID(ctx, badIDs...); err != nil {
			t.Errorf("DeleteUsersByID() error = %v, want nil", err)
		}
		if err := repo.DeleteUsersByID(ctx); err != nil {
			t.Errorf("DeleteUsersByID() with no ids error = %v, want nil", err)
		}
	})

	t.Run("complaints", func(t *testing.T) {
		repo := NewComplaintRepository(nil)
		if err := repo.DeleteComplaintsByID(ctx, badIDs...); err != nil {
			t.Errorf("DeleteComplaintsByID() error = %v, want nil", err)
		}
		if err := repo.DeleteComplaintsByID(ctx); err != nil {
			t.Errorf("DeleteComplaintsByID() with no ids error = %v, want nil", err)
		}
	})
}
