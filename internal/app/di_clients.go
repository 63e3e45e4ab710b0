package app

import (
	"fmt"

	clientsHTTP "github.com/healthdesk/healthinfo/internal/clients/http"
	clientsRepository "github.com/healthdesk/healthinfo/internal/clients/repository"
	clientsUseCase "github.com/healthdesk/healthinfo/internal/clients/usecase"
)

// ClientRepository returns the client repository based on database driver.
func (c *Container) ClientRepository() (clientsUseCase.ClientRepository, error) {
	var err error
	c.clientRepoInit.Do(func() {
		c.clientRepo, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepo"]; exists {
		return nil, storedErr
	}
	return c.clientRepo, nil
}

// ClientUseCase returns the client use case.
func (c *Container) ClientUseCase() (clientsUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// ClientHandler returns the HTTP handler for client operations.
func (c *Container) ClientHandler() (*clientsHTTP.ClientHandler, error) {
	var err error
	c.clientHandlerInit.Do(func() {
		c.clientHandler, err = c.initClientHandler()
		if err != nil {
			c.initErrors["clientHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientHandler"]; exists {
		return nil, storedErr
	}
	return c.clientHandler, nil
}

// initClientRepository creates the client repository based on the database
// driver.
func (c *Container) initClientRepository() (clientsUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return clientsRepository.NewPostgreSQLClientRepository(db), nil
	case "mysql":
		return clientsRepository.NewMySQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initClientUseCase creates the client use case with all its dependencies.
func (c *Container) initClientUseCase() (clientsUseCase.ClientUseCase, error) {
	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	fieldCodec, err := c.FieldCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get field codec for client use case: %w", err)
	}

	baseUseCase := clientsUseCase.NewClientUseCase(clientRepo, fieldCodec)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for client use case: %w", err)
		}
		return clientsUseCase.NewClientUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initClientHandler creates the client HTTP handler with all its dependencies.
func (c *Container) initClientHandler() (*clientsHTTP.ClientHandler, error) {
	clientUC, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for client handler: %w", err)
	}

	return clientsHTTP.NewClientHandler(clientUC, c.Logger()), nil
}
