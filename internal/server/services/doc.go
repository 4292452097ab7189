// Package services contains server-side business logic: the credential
// store (UserService), login and registration (AuthService), and the
// client, project, invoice and dashboard services used by the HTTP API.
//
// Services translate repository errors into the sentinels defined in
// internal/common. Persistence failures are wrapped with common.ErrStorage.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/agencydesk/internal/common"
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
