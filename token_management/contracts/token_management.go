package contracts

type ITokenManagement interface {
	UsedTokens(inputToken int, outputToken int)
	DisplayTokenUsage(providerName string, modelName string)
	GetCurrentTokenUsage() (total int, input int, output int)
	ClearToken()
}
