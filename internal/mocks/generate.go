package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/participant --output domain/participant --outpkg participantmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/profit --output domain/profit --outpkg profitmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AcceptanceRepository --dir ../domain/challenge --output domain/challenge --outpkg challengemock --filename acceptance_repository_mock.go
