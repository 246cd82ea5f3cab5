// Package services holds the business logic between the HTTP controllers
// and the repositories. Each service declares the narrow repository
// interface it needs so unit tests can substitute mocks.
package services

import "time"

// storeTimeout bounds every store round trip issued by a service.
const storeTimeout = 5 * time.Second
