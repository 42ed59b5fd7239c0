package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no surok-build.yaml can be located.
	ErrConfigNotFound = zerr.New("could not find surok-build.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownImage is returned when an image role is not defined in the config.
	ErrUnknownImage = zerr.New("image not defined in config")

	// ErrInvalidImageSpec is returned when an image spec is missing a tag or context.
	ErrInvalidImageSpec = zerr.New("image spec requires a tag and a context directory")

	// ErrImageBuildFailed is returned when the Docker daemon reports a build failure.
	ErrImageBuildFailed = zerr.New("image build failed")

	// ErrPackageBuildFailed is returned when the Debian packaging command fails.
	ErrPackageBuildFailed = zerr.New("package build failed")

	// ErrSourceFetchFailed is returned when the source tree cannot be fetched.
	ErrSourceFetchFailed = zerr.New("failed to fetch source tree")

	// ErrSourceMissing is returned when the source dir is absent and no repository is configured.
	ErrSourceMissing = zerr.New("source directory missing and no repository configured")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrFileOpenFailed is returned when a file cannot be opened for hashing.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrContextHashFailed is returned when the image context digest cannot be computed.
	ErrContextHashFailed = zerr.New("failed to hash image context")

	// ErrBuildExecutionFailed is returned when any build action fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
