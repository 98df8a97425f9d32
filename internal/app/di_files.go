package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	cryptoService "github.com/allisson/trustbox/internal/crypto/service"
	filesHTTP "github.com/allisson/trustbox/internal/files/http"
	filesRepository "github.com/allisson/trustbox/internal/files/repository"
	filesService "github.com/allisson/trustbox/internal/files/service"
	filesUseCase "github.com/allisson/trustbox/internal/files/usecase"
)

// TokenService returns the download token service.
func (c *Container) TokenService() filesService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = filesService.NewTokenService()
	})
	return c.tokenService
}

// PassphraseCipher returns the passphrase-based envelope cipher.
func (c *Container) PassphraseCipher() cryptoService.PassphraseCipher {
	c.cipherInit.Do(func() {
		c.passphraseCipher = cryptoService.NewPassphraseCipher()
	})
	return c.passphraseCipher
}

// PolicyDecoder returns the encrypted policy envelope decoder.
func (c *Container) PolicyDecoder() (filesService.PolicyDecoder, error) {
	var err error
	c.policyDecoderInit.Do(func() {
		var suite cryptoDomain.CipherSuite
		suite, err = c.cipherSuite()
		if err != nil {
			c.initErrors["policyDecoder"] = err
			return
		}
		c.policyDecoder = filesService.NewPolicyDecoder(c.PassphraseCipher(), suite)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyDecoder"]; exists {
		return nil, storedErr
	}
	return c.policyDecoder, nil
}

// FileRepository returns the encrypted file repository based on database driver.
func (c *Container) FileRepository() (filesUseCase.FileRepository, error) {
	var err error
	c.fileRepoInit.Do(func() {
		c.fileRepo, err = c.initFileRepository()
		if err != nil {
			c.initErrors["fileRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileRepo"]; exists {
		return nil, storedErr
	}
	return c.fileRepo, nil
}

// FileUseCase returns the encrypted file use case.
func (c *Container) FileUseCase() (filesUseCase.FileUseCase, error) {
	var err error
	c.fileUseCaseInit.Do(func() {
		c.fileUseCase, err = c.initFileUseCase()
		if err != nil {
			c.initErrors["fileUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileUseCase"]; exists {
		return nil, storedErr
	}
	return c.fileUseCase, nil
}

// FileHandler returns the HTTP handler for encrypted file operations.
func (c *Container) FileHandler() (*filesHTTP.FileHandler, error) {
	var err error
	c.fileHandlerInit.Do(func() {
		c.fileHandler, err = c.initFileHandler()
		if err != nil {
			c.initErrors["fileHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileHandler"]; exists {
		return nil, storedErr
	}
	return c.fileHandler, nil
}

// Sweeper returns the background reclamation sweeper.
func (c *Container) Sweeper() (*filesUseCase.Sweeper, error) {
	var err error
	c.sweeperInit.Do(func() {
		c.sweeper, err = c.initSweeper()
		if err != nil {
			c.initErrors["sweeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sweeper"]; exists {
		return nil, storedErr
	}
	return c.sweeper, nil
}

// cipherSuite resolves the configured cipher suite for newly stored files.
func (c *Container) cipherSuite() (cryptoDomain.CipherSuite, error) {
	switch c.config.CipherSuite {
	case "aes-gcm":
		return cryptoDomain.SuiteByID(cryptoDomain.SuiteV1)
	case "chacha20-poly1305":
		return cryptoDomain.SuiteByID(cryptoDomain.SuiteV2)
	default:
		return cryptoDomain.CipherSuite{}, fmt.Errorf("unsupported cipher suite: %s", c.config.CipherSuite)
	}
}

// initFileRepository creates the file repository based on the database driver.
func (c *Container) initFileRepository() (filesUseCase.FileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for file repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return filesRepository.NewPostgreSQLFileRepository(db), nil
	case "mysql":
		return filesRepository.NewMySQLFileRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFileUseCase creates the file use case with the metrics decorator.
func (c *Container) initFileUseCase() (filesUseCase.FileUseCase, error) {
	fileRepo, err := c.FileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get file repository for file use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for file use case: %w", err)
	}

	policyDecoder, err := c.PolicyDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy decoder for file use case: %w", err)
	}

	suite, err := c.cipherSuite()
	if err != nil {
		return nil, err
	}

	useCase := filesUseCase.NewFileUseCase(
		fileRepo,
		txManager,
		c.TokenService(),
		policyDecoder,
		c.PassphraseCipher(),
		suite,
		c.config.SweepBatchSize,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for file use case: %w", err)
	}

	return filesUseCase.NewFileUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initFileHandler creates the file HTTP handler.
func (c *Container) initFileHandler() (*filesHTTP.FileHandler, error) {
	fileUseCase, err := c.FileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get file use case for file handler: %w", err)
	}

	return filesHTTP.NewFileHandler(fileUseCase, c.Logger()), nil
}

// initSweeper creates the background reclamation sweeper.
func (c *Container) initSweeper() (*filesUseCase.Sweeper, error) {
	fileUseCase, err := c.FileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get file use case for sweeper: %w", err)
	}

	return filesUseCase.NewSweeper(
		filesUseCase.SweeperConfig{Interval: c.config.SweepInterval},
		fileUseCase,
		c.Logger(),
	), nil
}
