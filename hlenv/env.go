// Package hlenv defines the Mainnet/Testnet distinction shared by the
// signer and TSD builder: which phantom-agent source byte to use, and
// which chain name string to embed in signed messages.
package hlenv

// Environment selects which deployment a signed action targets.
type Environment int

const (
	Mainnet Environment = iota
	Testnet
)

// ChainName returns the string embedded as hyperliquidChain in
// user-signed TSD payloads.
func (e Environment) ChainName() string {
	if e == Testnet {
		return "Testnet"
	}
	return "Mainnet"
}

// PhantomAgentSource returns the single-byte source tag used in the
// phantom agent object: "a" for mainnet, "b" for testnet.
func (e Environment) PhantomAgentSource() string {
	if e == Testnet {
		return "b"
	}
	return "a"
}

// SignatureChainID is the fixed EIP-155 chain id string used for the
// signing domain of user-signed actions, independent of Environment.
const SignatureChainID = "0x66eee"
