package mocks

//go:generate mockgen -source=./../client/modules/state/state.go -destination=./clientMocks/state_mock.go -package=clientMocks
//go:generate mockgen -source=./../client/modules/keystore/keystore.go -destination=./clientMocks/keystore_mock.go -package=clientMocks
//go:generate mockgen -source=./../client/services/registration/interfaces.go -destination=./serviceMocks/registration_mock.go -package=serviceMocks
//go:generate mockgen -source=./../client/services/chain/chain.go -destination=./serviceMocks/chain_mock.go -package=serviceMocks
//go:generate mockgen -source=./../client/services/registration/service.go -destination=./apiMocks/registration_service_mock.go -package=apiMocks
