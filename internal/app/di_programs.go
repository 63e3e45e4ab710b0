package app

import (
	"fmt"

	programsHTTP "github.com/healthdesk/healthinfo/internal/programs/http"
	programsRepository "github.com/healthdesk/healthinfo/internal/programs/repository"
	programsUseCase "github.com/healthdesk/healthinfo/internal/programs/usecase"
)

// ProgramRepository returns the program repository based on database driver.
func (c *Container) ProgramRepository() (programsUseCase.ProgramRepository, error) {
	var err error
	c.programRepoInit.Do(func() {
		c.programRepo, err = c.initProgramRepository()
		if err != nil {
			c.initErrors["programRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["programRepo"]; exists {
		return nil, storedErr
	}
	return c.programRepo, nil
}

// ProgramUseCase returns the program use case.
func (c *Container) ProgramUseCase() (programsUseCase.ProgramUseCase, error) {
	var err error
	c.programUseCaseInit.Do(func() {
		c.programUseCase, err = c.initProgramUseCase()
		if err != nil {
			c.initErrors["programUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["programUseCase"]; exists {
		return nil, storedErr
	}
	return c.programUseCase, nil
}

// ProgramHandler returns the HTTP handler for program operations.
func (c *Container) ProgramHandler() (*programsHTTP.ProgramHandler, error) {
	var err error
	c.programHandlerInit.Do(func() {
		c.programHandler, err = c.initProgramHandler()
		if err != nil {
			c.initErrors["programHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["programHandler"]; exists {
		return nil, storedErr
	}
	return c.programHandler, nil
}

// initProgramRepository creates the program repository based on the database
// driver.
func (c *Container) initProgramRepository() (programsUseCase.ProgramRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for program repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return programsRepository.NewPostgreSQLProgramRepository(db), nil
	case "mysql":
		return programsRepository.NewMySQLProgramRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initProgramUseCase creates the program use case with all its dependencies.
func (c *Container) initProgramUseCase() (programsUseCase.ProgramUseCase, error) {
	programRepo, err := c.ProgramRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get program repository for program use case: %w", err)
	}

	baseUseCase := programsUseCase.NewProgramUseCase(programRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for program use case: %w", err)
		}
		return programsUseCase.NewProgramUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initProgramHandler creates the program HTTP handler with all its
// dependencies.
func (c *Container) initProgramHandler() (*programsHTTP.ProgramHandler, error) {
	programUC, err := c.ProgramUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get program use case for program handler: %w", err)
	}

	return programsHTTP.NewProgramHandler(programUC, c.Logger()), nil
}
