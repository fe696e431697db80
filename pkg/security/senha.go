package security

import "golang.org/x/crypto/bcrypt"

// GerarHashSenha aplica o hash de mão única sobre a senha em texto puro
func GerarHashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SenhasIdenticas verifica a senha em texto puro contra o hash armazenado
func SenhasIdenticas(senha, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
