package mocks

//go:generate mockery --name PlayWriter --srcpkg github.com/aevon-lab/playstats/internal/core/storage --output ./storage --outpkg storagemocks --filename mock_PlayWriter.go --with-expecter
//go:generate mockery --name CounterReader --srcpkg github.com/aevon-lab/playstats/internal/core/storage --output ./storage --outpkg storagemocks --filename mock_CounterReader.go --with-expecter
