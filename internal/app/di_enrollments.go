package app

import (
	"fmt"

	enrollmentsHTTP "github.com/healthdesk/healthinfo/internal/enrollments/http"
	enrollmentsRepository "github.com/healthdesk/healthinfo/internal/enrollments/repository"
	enrollmentsUseCase "github.com/healthdesk/healthinfo/internal/enrollments/usecase"
)

// EnrollmentRepository returns the enrollment repository based on database
// driver.
func (c *Container) EnrollmentRepository() (enrollmentsUseCase.EnrollmentRepository, error) {
	var err error
	c.enrollmentRepoInit.Do(func() {
		c.enrollmentRepo, err = c.initEnrollmentRepository()
		if err != nil {
			c.initErrors["enrollmentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["enrollmentRepo"]; exists {
		return nil, storedErr
	}
	return c.enrollmentRepo, nil
}

// EnrollmentUseCase returns the enrollment use case.
func (c *Container) EnrollmentUseCase() (enrollmentsUseCase.EnrollmentUseCase, error) {
	var err error
	c.enrollmentUseCaseInit.Do(func() {
		c.enrollmentUseCase, err = c.initEnrollmentUseCase()
		if err != nil {
			c.initErrors["enrollmentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["enrollmentUseCase"]; exists {
		return nil, storedErr
	}
	return c.enrollmentUseCase, nil
}

// EnrollmentHandler returns the HTTP handler for enrollment operations.
func (c *Container) EnrollmentHandler() (*enrollmentsHTTP.EnrollmentHandler, error) {
	var err error
	c.enrollmentHandlerInit.Do(func() {
		c.enrollmentHandler, err = c.initEnrollmentHandler()
		if err != nil {
			c.initErrors["enrollmentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["enrollmentHandler"]; exists {
		return nil, storedErr
	}
	return c.enrollmentHandler, nil
}

// initEnrollmentRepository creates the enrollment repository based on the
// database driver.
func (c *Container) initEnrollmentRepository() (enrollmentsUseCase.EnrollmentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for enrollment repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return enrollmentsRepository.NewPostgreSQLEnrollmentRepository(db), nil
	case "mysql":
		return enrollmentsRepository.NewMySQLEnrollmentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEnrollmentUseCase creates the enrollment use case with all its
// dependencies.
func (c *Container) initEnrollmentUseCase() (enrollmentsUseCase.EnrollmentUseCase, error) {
	enrollmentRepo, err := c.EnrollmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment repository for enrollment use case: %w", err)
	}

	fieldCodec, err := c.FieldCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get field codec for enrollment use case: %w", err)
	}

	baseUseCase := enrollmentsUseCase.NewEnrollmentUseCase(enrollmentRepo, fieldCodec)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for enrollment use case: %w", err)
		}
		return enrollmentsUseCase.NewEnrollmentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEnrollmentHandler creates the enrollment HTTP handler with all its
// dependencies.
func (c *Container) initEnrollmentHandler() (*enrollmentsHTTP.EnrollmentHandler, error) {
	enrollmentUC, err := c.EnrollmentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment use case for enrollment handler: %w", err)
	}

	return enrollmentsHTTP.NewEnrollmentHandler(enrollmentUC, c.Logger()), nil
}
